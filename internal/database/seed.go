package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/audiogear-golang/internal/models"
)

type seedUser struct {
	username string
	password string
	isAdmin  bool
}

// seedUsers are created once on first startup. "admin"/"admin" is the
// protected default account; the rest are demo logins.
var seedUsers = []seedUser{
	{"admin", "admin", true},
	{"user1", "password1", false},
	{"user2", "password2", false},
	{"testuser", "test123", false},
	{"jankowalski", "kowalski123", false},
	{"annanowak", "nowak456", false},
	{"testadmin", "admin123", true},
}

type seedItem struct {
	name        string
	category    string
	brand       string
	price       float64
	rating      float64
	description string
	inStock     bool
}

var seedItems = []seedItem{
	{"Shure SM58", "microphone", "Shure", 429.0, 4.8, "Dynamic vocal microphone", true},
	{"Audio-Technica ATH-M50x", "headphones", "Audio-Technica", 649.0, 4.7, "Closed-back studio headphones", true},
	{"Focusrite Scarlett 2i2 3rd Gen", "interface", "Focusrite", 599.0, 4.6, "2-in/2-out USB audio interface", true},
	{"Behringer UMC22", "interface", "Behringer", 229.0, 4.3, "USB audio interface with Midas preamp", true},
	{"Rode NT1 5th Gen", "microphone", "Rode", 1199.0, 4.7, "Ultra low self-noise studio condenser microphone", true},
	{"Sennheiser e835", "microphone", "Sennheiser", 389.0, 4.5, "Cardioid dynamic vocal microphone for stage and rehearsal", true},
	{"Audio-Technica AT2020", "microphone", "Audio-Technica", 499.0, 4.6, "Affordable large-diaphragm condenser for home studios", true},
	{"Shure SM7B", "microphone", "Shure", 1899.0, 4.9, "Broadcast dynamic microphone favored for vocals and podcasting", true},
	{"MOTU M2", "interface", "MOTU", 899.0, 4.8, "2x2 USB-C audio interface with ESS converters and low latency", true},
	{"Universal Audio Volt 2", "interface", "Universal Audio", 749.0, 4.6, "2-in/2-out USB-C interface with Vintage preamp mode", false},
	{"PreSonus AudioBox USB 96", "interface", "PreSonus", 399.0, 4.4, "Compact 2x2 interface up to 24-bit/96 kHz", true},
	{"Steinberg UR22C", "interface", "Steinberg", 699.0, 4.5, "2x2 USB 3.0 (USB-C) interface with D-PRE preamps", true},
	{"Beyerdynamic DT 770 Pro 80 Ohm", "headphones", "Beyerdynamic", 599.0, 4.8, "Closed-back studio headphones with strong isolation", true},
	{"Sony MDR-7506", "headphones", "Sony", 449.0, 4.7, "Classic closed-back monitoring headphones", true},
}

// Seed creates the default users and the demo catalog. It is idempotent:
// users are inserted only when their username is absent, items only when
// the table is empty.
func Seed(db *sql.DB) error {
	for _, u := range seedUsers {
		var id int64
		err := db.QueryRow("SELECT id FROM users WHERE username = ?", u.username).Scan(&id)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("seed users: %w", err)
		}

		var password models.Password
		if err := password.Set(u.password); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		_, err = db.Exec(
			"INSERT INTO users (username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?)",
			u.username, password.Hash, u.isAdmin, time.Now(),
		)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		log.Printf("Seeded user %q", u.username)
	}

	var itemCount int
	if err := db.QueryRow("SELECT COUNT(id) FROM gear_items").Scan(&itemCount); err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	if itemCount > 0 {
		return nil
	}

	for _, it := range seedItems {
		_, err := db.Exec(
			`INSERT INTO gear_items (name, category, brand, price, in_stock, rating, description, image_url, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
			it.name, it.category, it.brand, it.price, it.inStock, it.rating, it.description, time.Now(),
		)
		if err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}
	log.Printf("Seeded %d demo gear items", len(seedItems))
	return nil
}
