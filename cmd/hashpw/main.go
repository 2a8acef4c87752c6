// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ariefcatur/nirmala-invitations/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}
