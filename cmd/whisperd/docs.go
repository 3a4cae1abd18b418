package main

// General API documentation for swaggo. Run `swag init -g cmd/whisperd/main.go` to regenerate docs.
//
// @title           whisperd API
// @version         1.0
// @description     OpenAI-compatible /v1/audio/transcriptions endpoint backed by a local whisper engine.
//
// @contact.name   whisperd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
