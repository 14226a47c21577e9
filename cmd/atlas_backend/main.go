package main

import "github.com/SscSPs/etsy_atlas/cmd/atlas_backend/commands"

// @title Etsy Atlas Backend API
// @version 1.0
// @description Back office for an Etsy shop: orders, products, capital and users.

// @host localhost:8080
// @BasePath /
func main() {
	commands.Execute()
}
