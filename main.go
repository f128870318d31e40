package main

import "github.com/jfmyers9/spotctl/cmd"

func main() {
	cmd.Execute()
}
