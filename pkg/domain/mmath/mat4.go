// 指示: miu200521358
package mmath

import "github.com/go-gl/mathgl/mgl64"

// Mat4 は4x4同次変換行列を表す。列ベクトル規約で点に適用する。
type Mat4 struct {
	mgl64.Mat4
}

// NewMat4 は単位行列を生成する。
func NewMat4() Mat4 {
	return Mat4{Mat4: mgl64.Ident4()}
}

// NewMat4FromAxes は基底ベクトルと原点から変換行列を生成する。
func NewMat4FromAxes(axisX Vec3, axisY Vec3, axisZ Vec3, origin Vec3) Mat4 {
	m := mgl64.Ident4()
	setCol(&m, 0, axisX)
	setCol(&m, 1, axisY)
	setCol(&m, 2, axisZ)
	setCol(&m, 3, origin)
	return Mat4{Mat4: m}
}

// ComposeMat4 は移動・回転・拡縮から変換行列を合成する。
func ComposeMat4(translate Vec3, rotate Quaternion, scale Vec3) Mat4 {
	t := mgl64.Translate3D(translate.X, translate.Y, translate.Z)
	r := rotate.Quat.Mat4()
	s := mgl64.Scale3D(scale.X, scale.Y, scale.Z)
	return Mat4{Mat4: t.Mul4(r).Mul4(s)}
}

// Mul は行列積 m * other を返す。
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4{Mat4: m.Mat4.Mul4(other.Mat4)}
}

// Inverse は逆行列を返す。
func (m Mat4) Inverse() Mat4 {
	return Mat4{Mat4: m.Mat4.Inv()}
}

// MulVec3 は点を変換する。
func (m Mat4) MulVec3(v Vec3) Vec3 {
	result := m.Mat4.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
	return NewVec3(result[0], result[1], result[2])
}

// Translation は移動成分を返す。
func (m Mat4) Translation() Vec3 {
	col := m.Mat4.Col(3)
	return NewVec3(col[0], col[1], col[2])
}

// setCol は行列の列へベクトルを設定する。
func setCol(m *mgl64.Mat4, col int, v Vec3) {
	m.Set(0, col, v.X)
	m.Set(1, col, v.Y)
	m.Set(2, col, v.Z)
}
