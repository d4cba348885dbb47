package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/kvkit/pkg/kvkit"
	"go.llib.dev/kvkit/pkg/kvkit/kvbolt"
)

func main() {
	cli.Main(context.Background(), Command{})
}

const ErrEmptyInput errorkit.Error = "no record received on the standard input"

// Command reshapes a single JSON record.
// The record is read from the standard input, or from a bolt bucket when a database is given.
type Command struct {
	Pluck  string `flag:"pluck" desc:"comma separated list of fields to keep"`
	KeyBy  string `flag:"key-by" desc:"re-key the record by this field of its object values"`
	Unsafe bool   `flag:"unsafe" desc:"allow key-by to produce repeated keys, the last one wins"`
	Values bool   `flag:"values" desc:"print only the values, as a JSON array"`
	BoltDB string `flag:"bolt-db" env:"KVSHAPE_BOLT_DB" desc:"path of a bolt database to read the record from"`
	Bucket string `flag:"bucket" default:"records" desc:"bolt bucket that holds the record"`
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()
	if err := cmd.serve(ctx, w, r.Body); err != nil {
		logger.Error(ctx, "kvshape failed", logging.ErrField(err))
		w.ExitCode(cli.ExitCodeError)
		fmt.Fprintln(w, err.Error())
	}
}

func (cmd Command) serve(ctx context.Context, w io.Writer, body io.Reader) (rErr error) {
	logger.Debug(ctx, "kvshape configuration",
		logging.Field("pluck", cmd.Pluck),
		logging.Field("key-by", cmd.KeyBy),
		logging.Field("unsafe", cmd.Unsafe),
		logging.Field("values", cmd.Values),
		logging.Field("bolt-db", cmd.BoltDB))

	var kv *kvkit.KeyValues[string, any]
	if cmd.BoltDB != "" {
		db, err := bolt.Open(cmd.BoltDB, 0600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
		if err != nil {
			return err
		}
		defer errorkit.Finish(&rErr, db.Close)
		kv = kvbolt.LoadRecord(ctx, db, []byte(cmd.Bucket))
	} else {
		var err error
		kv, err = readRecord(body)
		if err != nil {
			return err
		}
	}

	out, err := cmd.reshape(kv)
	if err != nil {
		return err
	}
	data, err := jsonAPI.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (cmd Command) reshape(kv *kvkit.KeyValues[string, any]) (any, error) {
	if cmd.Pluck != "" {
		kv = kv.Pluck(splitList(cmd.Pluck)...)
	}
	if cmd.KeyBy != "" {
		var opts []kvkit.KeyedByOption
		if cmd.Unsafe {
			opts = append(opts, kvkit.KeyedByUnsafe())
		}
		kv = kvkit.KeyedBy(kv, fieldOf(cmd.KeyBy), opts...)
	}
	if cmd.Values {
		return kv.Values().ToSlice()
	}
	return kv.ToObject()
}

func readRecord(body io.Reader) (*kvkit.KeyValues[string, any], error) {
	if body == nil {
		return nil, ErrEmptyInput
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyInput
	}
	var rec kvkit.Record
	if err := rec.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return kvkit.FromRecord(&rec), nil
}

// fieldOf reads the named field of a record value in its printed form.
// Values that are not records, or lack the field, all key to "<nil>".
func fieldOf(name string) func(any) string {
	return func(v any) string {
		rec, ok := v.(*kvkit.Record)
		if !ok {
			return fmt.Sprint(nil)
		}
		fv, _ := rec.Get(name)
		return fmt.Sprint(fv)
	}
}

func splitList(raw string) []string {
	var vs []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			vs = append(vs, v)
		}
	}
	return vs
}
