// 指示: miu200521358
// Package mmath はシーン・アセット共通の幾何計算型を提供する。
package mmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// ZERO_VEC3 は零ベクトルを表す。
var ZERO_VEC3 = Vec3{}

// ONE_VEC3 は全成分1のベクトルを表す。
var ONE_VEC3 = Vec3{Vec: r3.Vec{X: 1, Y: 1, Z: 1}}

// UNIT_X_VEC3 はX軸単位ベクトルを表す。
var UNIT_X_VEC3 = Vec3{Vec: r3.Vec{X: 1}}

// UNIT_Y_VEC3 はY軸単位ベクトルを表す。
var UNIT_Y_VEC3 = Vec3{Vec: r3.Vec{Y: 1}}

// UNIT_Z_VEC3 はZ軸単位ベクトルを表す。
var UNIT_Z_VEC3 = Vec3{Vec: r3.Vec{Z: 1}}

// NewVec3 は成分指定でベクトルを生成する。
func NewVec3(x float64, y float64, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Add は加算結果を返す。
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{Vec: r3.Add(v.Vec, other.Vec)}
}

// Sub は減算結果を返す。
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{Vec: r3.Sub(v.Vec, other.Vec)}
}

// MulScalar はスカラー倍を返す。
func (v Vec3) MulScalar(s float64) Vec3 {
	return Vec3{Vec: r3.Scale(s, v.Vec)}
}

// Dot は内積を返す。
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.Vec, other.Vec)
}

// Cross は外積を返す。
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{Vec: r3.Cross(v.Vec, other.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// Distance は2点間距離を返す。
func (v Vec3) Distance(other Vec3) float64 {
	return r3.Norm(r3.Sub(v.Vec, other.Vec))
}

// Normalized は正規化結果を返す。零ベクトルは零ベクトルのまま返す。
func (v Vec3) Normalized() Vec3 {
	length := r3.Norm(v.Vec)
	if length == 0 {
		return Vec3{}
	}
	return Vec3{Vec: r3.Scale(1.0/length, v.Vec)}
}

// NearEquals は許容誤差内の一致を判定する。
func (v Vec3) NearEquals(other Vec3, epsilon float64) bool {
	return math.Abs(v.X-other.X) <= epsilon &&
		math.Abs(v.Y-other.Y) <= epsilon &&
		math.Abs(v.Z-other.Z) <= epsilon
}

// DegToRad は度をラジアンへ変換する。
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
