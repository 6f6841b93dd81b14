package types

// 欠損フィールドの代替文字列 (センチネル値)。
// どのサイトから抽出しても行の形を揃えるため、空のままにはしません。
const (
	NoTitle  = "No Title Found"
	NoAuthor = "No Author Found"
	NoText   = "No Text Found"
)

// Record は、1つのURLから抽出された記事を表します。
// 4つのフィールドは常に値を持ちます (欠損時はセンチネル値)。
type Record struct {
	Title  string
	Author string
	Text   string
	URL    string // 入力行をトリムしたそのままの文字列 (リダイレクト先ではない)
}

// Stage は、URL処理がどの段階で終了したかを表します。
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageRoute   Stage = "route"
	StageExtract Stage = "extract"
	StageSink    Stage = "sink"
	StageOK      Stage = "ok"
)

// URLResult は、特定のURLの処理結果、またはその処理中に発生したエラーを保持します。
// これは、パイプラインの実行サマリーとして利用されます。
type URLResult struct {
	URL   string // 処理対象のURL
	Stage Stage  // 処理が終了した段階
	Error error  // 処理中に発生したエラー (成功時は nil)
}

// OK は、URLが1行として書き出されたかどうかを返します。
func (r URLResult) OK() bool {
	return r.Stage == StageOK && r.Error == nil
}
