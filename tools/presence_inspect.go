// Inspects presence rows stored in BadgerDB and prints them as a table.
// Usage: go run tools/presence_inspect.go -db /path/to/badger
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"music-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "presence:", "Prefix to scan")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).WithReadOnly(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"User", "Online", "Live", "Status", "Song", "Position", "Updated"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				var state domain.PresenceState
				if err := json.Unmarshal(v, &state); err != nil {
					fmt.Printf("Error unmarshaling key %s: %v\n", string(item.Key()), err)
					return nil
				}
				table.Append([]string{
					state.UserID.String(),
					fmt.Sprintf("%t", state.IsOnline),
					fmt.Sprintf("%t", state.IsLive()),
					state.ListeningStatus,
					songColumn(state),
					fmt.Sprintf("%.1fs", state.Position),
					updatedColumn(state),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error while scanning: ", err)
	}

	table.Render()
}

func songColumn(state domain.PresenceState) string {
	if state.CurrentSongID == nil {
		return "-"
	}
	return state.CurrentSongID.String()[:8]
}

func updatedColumn(state domain.PresenceState) string {
	if state.UpdatedAt == nil {
		return "-"
	}
	return state.UpdatedAt.Format(time.TimeOnly)
}
