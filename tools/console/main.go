package main

import (
	"fmt"
	"io"
	"log"
	"reflect"
	"strings"

	"github.com/asdine/storm/v3"
	"github.com/chzyer/readline"
	"github.com/oleiade/reflections"
	"github.com/pkg/errors"
	"github.com/prateekdahiya/campusconnect/internal/model"
	"github.com/prateekdahiya/campusconnect/pkg/stormcodec"
	"github.com/prateekdahiya/campusconnect/pkg/stormsql"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

// SQL console over a CampusConnect database.
//
//	campusconnect> SELECT count(*) FROM items WHERE Type = 'lost' AND Found = false;
//	campusconnect> SELECT Title,Status FROM complaints WHERE Hostel = 'H4' ORDER BY CreatedAt DESC LIMIT 5;

var codec string

func main() {
	c := &cobra.Command{
		Use:   "console DATABASE",
		Short: "SQL console for a campusconnect database",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := storm.Open(args[0], storm.Codec(stormcodec.ByName(codec)))
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()

			rl, err := readline.New("campusconnect> ")
			if err != nil {
				return errors.Wrap(err, "could not start console")
			}
			defer rl.Close()

			for {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}

				line = strings.TrimSpace(line)
				switch line {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				if err := execute(db, line); err != nil {
					fmt.Printf("ERROR: %v\n", err)
				}
			}
		},
	}
	c.Flags().StringVar(&codec, "codec", "msgpack", "Database codec (msgpack, cbor or binc)")

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func execute(db *storm.DB, sql string) error {
	sc, err := stormsql.ParseSelect(sql)
	if err != nil {
		return err
	}

	query := db.Select(sc.Matcher)
	if sc.Skip > 0 {
		query.Skip(sc.Skip)
	}
	if sc.Limit > 0 {
		query.Limit(sc.Limit)
	}
	if len(sc.OrderBy) > 0 {
		query.OrderBy(sc.OrderBy...)
		if sc.OrderByReversed {
			query.Reverse()
		}
	}

	if sc.Count {
		record, err := record(sc.Tablename)
		if err != nil {
			return err
		}

		n, err := query.Count(record)
		if err != nil {
			return errors.Wrap(err, "could not perform query")
		}

		fmt.Println("Count:", n)
		return nil
	}

	records, err := records(sc.Tablename)
	if err != nil {
		return err
	}

	err = query.Find(records)
	if err == storm.ErrNotFound {
		fmt.Println("[]")
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "could not perform query")
	}

	if len(sc.SelectedFields) == 0 {
		litter.Dump(records)
		return nil
	}

	// Field projection.
	slice := reflect.ValueOf(records).Elem()
	for i := 0; i < slice.Len(); i++ {
		row := make([]string, 0, len(sc.SelectedFields))
		for _, field := range sc.SelectedFields {
			value, err := reflections.GetField(slice.Index(i).Interface(), field)
			if err != nil {
				return errors.Wrapf(err, "unknown field: %s", field)
			}
			row = append(row, fmt.Sprintf("%s=%v", field, value))
		}
		fmt.Println(strings.Join(row, " | "))
	}
	return nil
}

func record(tablename string) (any, error) {
	switch tablename {
	case "users":
		return &model.User{}, nil
	case "items":
		return &model.Item{}, nil
	case "complaints":
		return &model.Complaint{}, nil
	case "cycles":
		return &model.Cycle{}, nil
	case "bookings":
		return &model.Booking{}, nil
	case "books":
		return &model.Book{}, nil
	}
	return nil, errors.Errorf("unknown tablename: %s", tablename)
}

func records(tablename string) (any, error) {
	switch tablename {
	case "users":
		return &[]*model.User{}, nil
	case "items":
		return &[]*model.Item{}, nil
	case "complaints":
		return &[]*model.Complaint{}, nil
	case "cycles":
		return &[]*model.Cycle{}, nil
	case "bookings":
		return &[]*model.Booking{}, nil
	case "books":
		return &[]*model.Book{}, nil
	}
	return nil, errors.Errorf("unknown tablename: %s", tablename)
}
