// Package sink は、抽出済み Record を表形式で永続化します。
package sink

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/shouni/go-article-exact/pkg/types"
)

// Columns は出力の固定列順です。
var Columns = []string{"Title", "Author", "Text", "URL"}

// CSVSink は Record を1行ずつCSVへ書き出す RecordSink です。
// 各 Append はフラッシュされるため、途中で異常終了しても失われるのは書き込み中の1行だけです。
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
}

// New は任意の io.Writer へ書き出す CSVSink を生成します。
// w が io.Closer を実装していても Close では閉じません。
func New(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// Create は path を新規作成 (既存の場合は切り詰め) し、CSVSink を返します。
// 返されたファイルは Close で閉じられます。
func Create(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "出力ファイルを作成できません: %s", path)
	}
	return &CSVSink{w: csv.NewWriter(f), closer: f}, nil
}

// WriteHeader はヘッダー行を書き出します。
func (s *CSVSink) WriteHeader(columns []string) error {
	return s.writeRow(columns)
}

// Append は Record を Columns の順で1行書き出します。
func (s *CSVSink) Append(rec *types.Record) error {
	if rec == nil {
		return eris.New("sink: nil record")
	}
	return s.writeRow([]string{rec.Title, rec.Author, rec.Text, rec.URL})
}

func (s *CSVSink) writeRow(row []string) error {
	if err := s.w.Write(row); err != nil {
		return eris.Wrap(err, "sink: write row")
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return eris.Wrap(err, "sink: flush row")
	}
	return nil
}

// Close は未書き込みのデータをフラッシュし、所有するファイルを閉じます。
func (s *CSVSink) Close() error {
	s.w.Flush()
	flushErr := s.w.Error()
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			return eris.Wrap(err, "sink: close")
		}
	}
	if flushErr != nil {
		return eris.Wrap(flushErr, "sink: flush")
	}
	return nil
}
