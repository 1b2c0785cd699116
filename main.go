package main

import "github.com/hrportal/leave-management/cmd"

func main() {
	cmd.Execute()
}
