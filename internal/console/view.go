package console

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Row is one line of the cart table as displayed.
type Row struct {
	Number    int
	Name      string
	Price     string
	Quantity  int
	LineTotal string
}

var tableHeader = []string{"Item Number", "Name", "Price", "Quantity", "Total"}

// Rows lists the cart in item number order with money rounded to two places.
func (s *Session) Rows() []Row {
	items := s.store.Items()
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			Number:    item.Number,
			Name:      item.Name,
			Price:     item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		})
	}
	return rows
}

func (s *Session) TotalLabel() string {
	return fmt.Sprintf("Total Price: %s%s", s.currency, s.store.Total().StringFixed(2))
}

// Render writes the table followed by the total label.
func (s *Session) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range tableHeader {
		sep := "\t"
		if i == len(tableHeader)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprint(tw, h+sep); err != nil {
			return err
		}
	}
	for _, row := range s.Rows() {
		marker := ""
		if row.Number == s.selected {
			marker = "*"
		}
		if _, err := fmt.Fprintf(tw, "%d%s\t%s\t%s\t%d\t%s\n",
			row.Number, marker, row.Name, row.Price, row.Quantity, row.LineTotal); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, s.TotalLabel())
	return err
}
