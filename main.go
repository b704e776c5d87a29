package main

import "gamedata-worker/cmd"

func main() {
	cmd.Execute()
}
