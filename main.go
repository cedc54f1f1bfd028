package main

import "overtrack/cmd"

func main() {
	cmd.Execute()
}
