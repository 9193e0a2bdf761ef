package middleware

import "github.com/go-chi/cors"

// CORS 允许浏览器前端跨域访问 API。
var CORS = cors.Handler(cors.Options{
	AllowedOrigins:   []string{"https://*", "http://*"},
	AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
	AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	ExposedHeaders:   []string{"X-Request-ID"},
	AllowCredentials: false,
	MaxAge:           300,
})
