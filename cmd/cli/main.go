package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/crypto/bcrypt"

	"github.com/RyanHLA/iasminsantos/internal/store"
)

const usage = `expected a subcommand: add-user, set-password, list-albums, selections, reset-pin`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
		username := addUserCmd.String("username", "", "Username for the new admin")
		password := addUserCmd.String("password", "", "Password for the new admin")
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*username, *password)

	case "set-password":
		setCmd := flag.NewFlagSet("set-password", flag.ExitOnError)
		username := setCmd.String("username", "", "Admin to update")
		password := setCmd.String("password", "", "New password")
		setCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			setCmd.PrintDefaults()
			os.Exit(1)
		}
		setPassword(*username, *password)

	case "list-albums":
		listCmd := flag.NewFlagSet("list-albums", flag.ExitOnError)
		category := listCmd.String("category", "", "Only list albums in this category")
		listCmd.Parse(os.Args[2:])
		listAlbums(*category)

	case "selections":
		selCmd := flag.NewFlagSet("selections", flag.ExitOnError)
		albumID := selCmd.String("album", "", "Album id to show selections for")
		selCmd.Parse(os.Args[2:])
		if *albumID == "" {
			fmt.Println("album is required")
			selCmd.PrintDefaults()
			os.Exit(1)
		}
		listSelections(*albumID)

	case "reset-pin":
		pinCmd := flag.NewFlagSet("reset-pin", flag.ExitOnError)
		albumID := pinCmd.String("album", "", "Album id to reset the PIN for")
		pin := pinCmd.String("pin", "", "New client PIN")
		pinCmd.Parse(os.Args[2:])
		if *albumID == "" || *pin == "" {
			fmt.Println("album and pin are required")
			pinCmd.PrintDefaults()
			os.Exit(1)
		}
		resetPIN(*albumID, *pin)

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openStore() *store.Store {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./iasminsantos.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure tables exist if running the cli before the server
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createUser(username, password string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(username, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

func setPassword(username, password string) {
	db := openStore()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.UpdateUserPassword(username, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	fmt.Printf("Password for '%s' updated.\n", username)
}

func resetPIN(albumID, pin string) {
	db := openStore()

	album, err := db.GetAlbum(albumID)
	if err != nil {
		log.Fatalf("Failed to load album: %v", err)
	}

	cfg := store.ClientConfig{
		Enabled:        album.ClientEnabled,
		PIN:            pin,
		SelectionLimit: album.SelectionLimit,
	}
	if err := db.UpdateClientConfig(albumID, cfg); err != nil {
		log.Fatalf("Failed to reset PIN: %v", err)
	}

	fmt.Printf("PIN for album '%s' updated.\n", album.Title)
}

func listAlbums(category string) {
	db := openStore()

	albums, err := db.ListAlbums(store.AlbumFilter{Category: category})
	if err != nil {
		log.Fatalf("Failed to list albums: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Category", "Title", "Status", "Client", "Submitted"})
	for _, a := range albums {
		client := "-"
		if a.ClientEnabled {
			client = "enabled"
		}
		submitted := "-"
		if a.ClientSubmittedAt != nil {
			submitted = a.ClientSubmittedAt.Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{a.ID, a.Category, a.Title, a.Status, client, submitted})
	}
	t.Render()
}

func listSelections(albumID string) {
	db := openStore()

	selections, err := db.ListSelections(albumID)
	if err != nil {
		log.Fatalf("Failed to list selections: %v", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Photo", "Title", "Selected At"})
	for _, sel := range selections {
		t.AppendRow(table.Row{sel.PhotoID, sel.Title, sel.CreatedAt.Format("2006-01-02 15:04")})
	}
	t.AppendFooter(table.Row{"", "Total", len(selections)})
	t.Render()
}
