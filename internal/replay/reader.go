// Package replay is the message-producer half of the engine's external
// interface (spec.md §1: "a message producer hands the core one decoded
// message at a time"). It decodes a CSV capture and yields
// orderbook.Message values in file order; it does not itself enforce
// timestamp ordering, matching spec.md §6.
package replay

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Aidin1998/lobreplay/internal/trading/orderbook"
)

// Reader decodes rows of the form:
//
//	timestamp,action,side,price,size,id
//
// action is one of A/C/M, side is one of B/S (bid/sell-i.e.-ask). Both the
// field order and the two-line header skip follow
// original_source/parser.cpp's parse_line/parse_mapped_data exactly
// (order_id is the last column there, not the first), adapted here to a
// streaming stdlib csv.Reader instead of a mmap + hand-rolled
// memchr/strtoull tokenizer (see DESIGN.md for why this stays on
// encoding/csv).
type Reader struct {
	csv        *csv.Reader
	skipped    int
	headerRows int
}

// NewReader wraps r as a message stream. The first two rows are
// discarded unread, matching parse_mapped_data's fixed two-header-line
// skip; a capture shorter than two lines yields io.EOF on the first
// Next call, same as the C++ parser's "missing header" case would abort
// before any message is produced.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.ReuseRecord = true
	return &Reader{csv: cr, headerRows: 2}
}

// Next decodes the next message, returning io.EOF once the input is
// exhausted.
func (rd *Reader) Next() (orderbook.Message, error) {
	if rd.skipped < rd.headerRows {
		// header rows may have any number of fields; only data rows
		// are held to the six-column layout.
		rd.csv.FieldsPerRecord = -1
		for rd.skipped < rd.headerRows {
			if _, err := rd.csv.Read(); err != nil {
				return orderbook.Message{}, err
			}
			rd.skipped++
		}
		rd.csv.FieldsPerRecord = 6
	}
	row, err := rd.csv.Read()
	if err != nil {
		return orderbook.Message{}, err
	}
	return decodeRow(row)
}

func decodeRow(row []string) (orderbook.Message, error) {
	var msg orderbook.Message

	ts, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return msg, fmt.Errorf("replay: bad timestamp %q: %w", row[0], err)
	}
	action, err := decodeAction(row[1])
	if err != nil {
		return msg, err
	}
	side, err := decodeSide(row[2])
	if err != nil {
		return msg, err
	}
	price, err := strconv.ParseInt(row[3], 10, 32)
	if err != nil {
		return msg, fmt.Errorf("replay: bad price %q: %w", row[3], err)
	}
	size, err := strconv.ParseUint(row[4], 10, 32)
	if err != nil {
		return msg, fmt.Errorf("replay: bad size %q: %w", row[4], err)
	}
	id, err := strconv.ParseUint(row[5], 10, 64)
	if err != nil {
		return msg, fmt.Errorf("replay: bad id %q: %w", row[5], err)
	}

	msg.ID = orderbook.OrderID(id)
	msg.Timestamp = ts
	msg.Price = int32(price)
	msg.Size = uint32(size)
	msg.Action = action
	msg.Side = side
	return msg, nil
}

func decodeAction(s string) (orderbook.Action, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("replay: bad action %q", s)
	}
	switch s[0] {
	case 'A', 'C', 'M':
		return orderbook.Action(s[0]), nil
	default:
		return 0, fmt.Errorf("replay: bad action %q", s)
	}
}

func decodeSide(s string) (orderbook.Side, error) {
	if len(s) != 1 {
		return false, fmt.Errorf("replay: bad side %q", s)
	}
	switch s[0] {
	case 'B', 'b':
		return orderbook.Bid, nil
	case 'S', 's':
		return orderbook.Ask, nil
	default:
		return false, fmt.Errorf("replay: bad side %q", s)
	}
}
