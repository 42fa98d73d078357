package main

import "github.com/killallgit/clipper-api/cmd"

// @title           Clipper API
// @version         1.0.0
// @description     Cuts time windows out of source videos, runs feature stages over them and serves the resulting artifacts
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/clipper-api
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer token issued by the identity provider ("Bearer <jwt>")
func main() {
	cmd.Execute()
}
