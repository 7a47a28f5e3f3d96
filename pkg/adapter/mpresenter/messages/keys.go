// 指示: miu200521358
// Package messages は表示メッセージの定義を提供する。
package messages

const (
	// ExportStart はエクスポート開始メッセージを表す。
	ExportStart = "エクスポートを開始します"
	// ExportLoadScene はシーン読込メッセージを表す。
	ExportLoadScene = "シーンを読み込んでいます"
	// ExportLoadSkin はスキン読込メッセージを表す。
	ExportLoadSkin = "スキン構造を読み込んでいます"
	// ExportCorrespondence は頂点対応構築メッセージを表す。
	ExportCorrespondence = "頂点対応を構築しています"
	// ExportRemap はウェイトリマップメッセージを表す。
	ExportRemap = "ウェイトをリマップしています"
	// ExportSave は保存メッセージを表す。
	ExportSave = "スキン構造を書き出しています"
	// ExportFinish はエクスポート完了メッセージを表す。
	ExportFinish = "エクスポートが完了しました"

	// WarnMissingInfluenceBone は欠落ボーン警告メッセージを表す。
	WarnMissingInfluenceBone = "ボーン表に無いインフルエンスを破棄しました"
	// WarnWeightsTruncated はウェイト切り捨て警告メッセージを表す。
	WarnWeightsTruncated = "ウェイトスロット上限により一部ウェイトを切り捨てました"
)
