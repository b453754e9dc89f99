package main

import "github.com/arjohnson15/workoutapp/cmd"

func main() {
	cmd.Execute()
}
