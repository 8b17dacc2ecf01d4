package main

import "resume-press/cmd"

func main() {
	cmd.Execute()
}
