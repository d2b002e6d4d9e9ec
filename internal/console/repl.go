package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const helpText = `commands:
  name <text>      set the product name field
  price <text>     set the unit price field
  qty <text>       set the quantity field
  fields           show the input fields
  select <n>       select item n and copy it into the fields
  deselect         drop the selection
  add              add the fields as a new item
  update           overwrite the selected item with the fields
  delete           delete the selected item
  clear            clear the input fields
  save             write the cart file
  load             replace the cart with the cart file
  list             show the cart
  total            show the total price
  stats            show command counters
  help             show this text
  quit             exit`

// Run reads one command per line from in until quit, EOF or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx = s.Context(ctx)
	s.log.Info(ctx, "session started")
	defer s.log.Info(ctx, "session ended")

	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Online Shopping Cart - type help for commands")
	if err := s.Render(out); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		quit, err := s.Execute(ctx, scanner.Text(), out)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Execute handles one command line. It reports whether the user asked to quit;
// the error is only non-nil when out cannot be written.
func (s *Session) Execute(ctx context.Context, line string, out io.Writer) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)

	var msg Message
	render := false
	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		_, err := fmt.Fprintln(out, helpText)
		return false, err
	case "name", "price", "qty", "quantity":
		if err := s.SetField(cmd, arg); err != nil {
			msg = failure(err.Error())
		} else {
			return false, nil
		}
	case "fields":
		f := s.Fields()
		_, err := fmt.Fprintf(out, "name=%q price=%q quantity=%q selected=%d\n", f.Name, f.Price, f.Quantity, s.Selected())
		return false, err
	case "select":
		number, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			msg = failure("Item number must be numeric")
			break
		}
		msg = s.Select(ctx, number)
		render = !msg.IsError()
	case "deselect":
		s.Deselect()
		render = true
	case "add":
		msg = s.Add(ctx)
		render = true
	case "update":
		msg = s.Update(ctx)
		render = true
	case "delete":
		msg = s.Delete(ctx)
		render = true
	case "clear":
		s.ClearFields()
		return false, nil
	case "save":
		msg = s.Save(ctx)
	case "load":
		msg = s.Load(ctx)
		render = true
	case "list":
		render = true
	case "total":
		_, err := fmt.Fprintln(out, s.TotalLabel())
		return false, err
	case "stats":
		return false, s.writeStats(out)
	default:
		msg = failure(fmt.Sprintf("Unknown command %q, type help", cmd))
	}

	if msg.Text != "" {
		if _, err := fmt.Fprintln(out, msg.String()); err != nil {
			return false, err
		}
	}
	if render {
		return false, s.Render(out)
	}
	return false, nil
}

func (s *Session) writeStats(out io.Writer) error {
	rows, err := s.Operations()
	if err != nil {
		_, werr := fmt.Fprintln(out, failure("Stats unavailable: "+err.Error()).String())
		return werr
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no commands recorded")
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(out, "%-13s %-18s %.0f\n", row.Operation, row.Result, row.Count); err != nil {
			return err
		}
	}
	return nil
}
