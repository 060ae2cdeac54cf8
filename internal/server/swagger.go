package server

//go:generate swag init -g internal/server/swagger.go -o internal/server/docs

// @title Secretariat API
// @version 0.1
// @description Lookup and ordering endpoints used by the secretariat admin pages. Unsafe methods require the X-CSRFToken header to echo the csrftoken cookie.
// @contact.name secrglue maintainers
// @contact.url https://github.com/raysh454/secrglue
// @BasePath /
