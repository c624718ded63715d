package main

import "github.com/PhillipJBridgeman/winnipeg-transit-app/cmd"

func main() {
	cmd.Execute()
}
