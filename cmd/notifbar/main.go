// Command notifbar selects notification bar entries from a browser state snapshot.
package main

func main() {
	Execute()
}
