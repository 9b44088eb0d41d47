package main

import "github.com/frahmantamala/service-tracking/cmd"

func main() {
	cmd.Execute()
}
