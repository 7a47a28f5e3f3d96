// 指示: miu200521358
package model

// エラーID一覧。merrのエラーIDとして使用する。
const (
	// ErrorIDValidation は呼び出し前提条件違反を表す。常に致命的で黙った補正は行わない。
	ErrorIDValidation = "ValidationError"
	// ErrorIDMissingInfluenceBone は参照ボーンがボーン表に存在しないことを表す。回復可能。
	ErrorIDMissingInfluenceBone = "MissingInfluenceBone"
	// ErrorIDScaleTooSmall はスケール係数が下限未満であることを表す。変更前に却下する。
	ErrorIDScaleTooSmall = "ScaleTooSmall"
	// ErrorIDPartitionVertexOutOfRange はパーティション頂点の範囲外参照を表す。
	// 上流の対応付け前提条件違反を示す致命的エラー。
	ErrorIDPartitionVertexOutOfRange = "PartitionVertexOutOfRange"
)
