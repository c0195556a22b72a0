package main

import "github.com/Thorongil80/fireplan-alarm-divera/cmd/fireplan-alarm-divera/cmd"

func main() {
	cmd.Execute()
}
