package main

import "fleetview/cmd"

func main() {
	cmd.Execute()
}
