package main

import (
	"context"
	"log"

	"github.com/campusbooks/campusbooks-backend/internal/config"
	"github.com/campusbooks/campusbooks-backend/internal/db"
	"github.com/campusbooks/campusbooks-backend/internal/model"
	"github.com/campusbooks/campusbooks-backend/internal/objectstore"
	"github.com/campusbooks/campusbooks-backend/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var store *objectstore.Store
	if cfg.StorageBucket != "" {
		store, err = objectstore.New(context.Background(), objectstore.Config{
			Bucket:          cfg.StorageBucket,
			CredentialsFile: cfg.CredentialsFile,
		})
		if err != nil {
			log.Printf("object storage disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	srv := server.New(nil, store)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// Connect in the background so a slow or absent database never keeps
	// the health endpoint from coming up.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		if err := conn.AutoMigrate(&model.User{}, &model.Listing{}, &model.Message{}); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		srv.SetDB(conn)
		log.Printf("database connected")
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
