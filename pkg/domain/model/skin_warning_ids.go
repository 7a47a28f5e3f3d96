// 指示: miu200521358
package model

const (
	// SkinWarningMissingInfluenceBone はボーン表に無い参照をウェイトごと破棄した警告。
	SkinWarningMissingInfluenceBone = "SkinWarningMissingInfluenceBone"
	// SkinWarningWeightsTruncated はスロット上限超過でウェイトを切り捨てた警告。
	SkinWarningWeightsTruncated = "SkinWarningWeightsTruncated"
)
