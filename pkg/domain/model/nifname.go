// 指示: miu200521358
package model

import "strings"

// シーン名とnif名の相互変換に使うワイルドカード。
// nif側の空白・角括弧はシーン側の識別子として使えないため固定エスケープする。
const (
	nifSpaceWildcard        = "_s_"
	nifOpenBracketWildcard  = "_ob_"
	nifCloseBracketWildcard = "_cb_"
)

// ToSceneName はnif形式の名前をシーン形式へ変換する。未知の文字はそのまま通す。
func ToSceneName(name string) string {
	name = strings.ReplaceAll(name, " ", nifSpaceWildcard)
	name = strings.ReplaceAll(name, "[", nifOpenBracketWildcard)
	name = strings.ReplaceAll(name, "]", nifCloseBracketWildcard)
	return name
}

// ToNifName はシーン形式の名前をnif形式へ変換する。ToSceneNameの逆変換。
func ToNifName(name string) string {
	name = strings.ReplaceAll(name, nifSpaceWildcard, " ")
	name = strings.ReplaceAll(name, nifOpenBracketWildcard, "[")
	name = strings.ReplaceAll(name, nifCloseBracketWildcard, "]")
	return name
}
