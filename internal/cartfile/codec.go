package cartfile

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/angelmondragon/shoppingcart/internal/cart"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
)

const (
	fieldSeparator = ","
	fieldCount     = 4
)

// SkippedLine records a line that Decode ignored.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// Result is what Decode recovered from a stream of lines.
type Result struct {
	Items   []cart.Item
	Skipped []SkippedLine
}

// Encode yields one "number,name,price,quantity" line per item. Names are
// written verbatim, so a name containing a comma will not survive a reload.
func Encode(items []cart.Item) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, item := range items {
			if !yield(encodeItem(item)) {
				return
			}
		}
	}
}

func encodeItem(item cart.Item) string {
	return strings.Join([]string{
		strconv.Itoa(item.Number),
		item.Name,
		item.UnitPrice.String(),
		strconv.Itoa(item.Quantity),
	}, fieldSeparator)
}

// Decode parses lines until the sequence ends. Lines with the wrong number of
// fields or an empty name are skipped. A numeric field that does not parse
// stops decoding; the items read so far are returned alongside the error.
func Decode(lines iter.Seq[string]) (Result, error) {
	var res Result
	lineNo := 0
	for line := range lines {
		lineNo++
		fields := splitFields(line)
		if len(fields) != fieldCount {
			res.Skipped = append(res.Skipped, SkippedLine{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
			})
			continue
		}
		if fields[1] == "" {
			res.Skipped = append(res.Skipped, SkippedLine{Line: lineNo, Text: line, Reason: "empty name"})
			continue
		}

		item, err := decodeFields(fields)
		if err != nil {
			return res, pkgerrors.Wrap(pkgerrors.CodeParse, err, fmt.Sprintf("line %d", lineNo)).
				WithDetails(map[string]any{"line": lineNo, "text": line})
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}

func decodeFields(fields []string) (cart.Item, error) {
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return cart.Item{}, pkgerrors.Wrap(pkgerrors.CodeParse, err, "item number must be numeric").
			WithDetails(map[string]any{"field": "number", "value": fields[0]})
	}
	price, err := cart.ParsePrice(fields[2])
	if err != nil {
		return cart.Item{}, err
	}
	qty, err := cart.ParseQuantity(fields[3])
	if err != nil {
		return cart.Item{}, err
	}
	return cart.Item{
		Number:    number,
		Name:      fields[1],
		UnitPrice: price,
		Quantity:  qty,
	}, nil
}

// splitFields splits on commas and drops trailing empty fields, so "1,Pen,2,"
// counts as three fields.
func splitFields(line string) []string {
	line = strings.TrimSuffix(line, "\r")
	fields := strings.Split(line, fieldSeparator)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	return fields
}
