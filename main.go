package main

import "github.com/racelytics/corner-analysis-go/cmd"

func main() {
	cmd.Execute()
}
