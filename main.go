package main

import (
	"zsecure.app/infrastructure"
	"zsecure.app/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
