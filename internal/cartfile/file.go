package cartfile

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/angelmondragon/shoppingcart/internal/cart"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"go.uber.org/multierr"
)

const DefaultPath = "cart.txt"

// Write streams the encoded items to w, one line each with a trailing newline.
func Write(w io.Writer, items []cart.Item) error {
	bw := bufio.NewWriter(w)
	for line := range Encode(items) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeIO, err, "write cart line")
		}
	}
	if err := bw.Flush(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "flush cart lines")
	}
	return nil
}

// Read decodes every line of r. Lines have no length limit; read failures are
// reported as IO errors.
func Read(r io.Reader) (Result, error) {
	var readErr error
	res, err := Decode(readLines(bufio.NewReader(r), &readErr))
	if err != nil {
		return res, err
	}
	if readErr != nil {
		return res, pkgerrors.Wrap(pkgerrors.CodeIO, readErr, "read cart lines")
	}
	return res, nil
}

// readLines yields each line without its newline; a final line without one is
// still yielded. The first non-EOF read error is stored in errp.
func readLines(br *bufio.Reader, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if !yield(strings.TrimSuffix(line, "\n")) {
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					*errp = err
				}
				return
			}
		}
	}
}

// File is the flat cart file on disk.
type File struct {
	Path string
}

func NewFile(path string) File {
	if path == "" {
		path = DefaultPath
	}
	return File{Path: path}
}

// Save truncates the file and writes items. A failure part way through leaves
// whatever was already written.
func (f File) Save(items []cart.Item) (err error) {
	fh, err := os.Create(f.Path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeIO, err, "create cart file")
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			err = multierr.Append(err, pkgerrors.Wrap(pkgerrors.CodeIO, cerr, "close cart file"))
		}
	}()
	return Write(fh, items)
}

// Load opens and decodes the file. A missing file is an IO error wrapping fs.ErrNotExist.
func (f File) Load() (res Result, err error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeIO, err, "open cart file")
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			err = multierr.Append(err, pkgerrors.Wrap(pkgerrors.CodeIO, cerr, "close cart file"))
		}
	}()
	return Read(fh)
}
