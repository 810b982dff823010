package main

import "github.com/GloryMsasalaga/django-voice/cmd"

// @title           Django Voice Docs API
// @version         1.0.0
// @description     A documentation scraping, translation and text-to-speech API for the official Django documentation
// @contact.name    API Support
// @contact.url     https://github.com/GloryMsasalaga/django-voice
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
