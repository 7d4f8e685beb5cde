package main

import "quicknotes/internal/app"

// @title           Notes API
// @version         1.0
// @description     Personal notes with email OTP and Google sign-in.
// @BasePath        /api
func main() {
	app.Run()
}
