package main

import "github.com/gadsby/notify-arrival/cmd/notify-arrival/cmd"

func main() {
	cmd.Execute()
}
