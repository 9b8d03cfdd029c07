package main

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	mw "pennywise/internal/api/middlewares"
	"pennywise/internal/api/routers"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/cron"
	"pennywise/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		return
	}

	utils.InitLogger()

	err = sqlconnect.ConnectDb()
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}

	if err := sqlconnect.RunMigrations(); err != nil {
		utils.Logger.Fatal("DB migration failed: ", err)
	}

	cron.StartCronJob(sqlconnect.DB)

	port := os.Getenv("SERVER_PORT")

	cert := os.Getenv("CERT_FILE")
	key := os.Getenv("KEY_FILE")

	router := routers.MainRouter()
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware, "/users/signup", "/users/login", "/users/refresh")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:    port,
		Handler: secureMux,
	}

	fmt.Println("Server is running on port", port)

	if cert != "" && key != "" {
		server.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
		err = server.ListenAndServeTLS(cert, key)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil {
		log.Fatalln("Error starting the server", err)
	}
}
