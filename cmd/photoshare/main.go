package main

import "photo-sharing-backend/cmd"

func main() {
	cmd.Run()
}
