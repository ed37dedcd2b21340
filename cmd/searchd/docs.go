package main

// General API documentation for swaggo. The served document is kept in the
// top-level docs package and mounted with the swagger build tag.
//
// @title           searchd API
// @version         1.0
// @description     HTTP API serving stop-and-search predictions from a pre-trained classifier.
//
// @contact.name   searchd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
