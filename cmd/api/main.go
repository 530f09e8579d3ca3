package main

import "os"

// @title           Medical Supply Warehouse API
// @version         1.0
// @description     Receiving, quality control, warehouse approval and inventory for medical supplies.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
