// 指示: miu200521358
package mmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Quaternion は回転を表す。
type Quaternion struct {
	mgl64.Quat
}

// NewQuaternion は単位クォータニオンを生成する。
func NewQuaternion() Quaternion {
	return Quaternion{Quat: mgl64.QuatIdent()}
}

// NewQuaternionByValues は成分指定でクォータニオンを生成する。
func NewQuaternionByValues(x float64, y float64, z float64, w float64) Quaternion {
	return Quaternion{Quat: mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}}
}

// NewQuaternionFromDegrees はXYZ回転角(度)からクォータニオンを生成する。
func NewQuaternionFromDegrees(x float64, y float64, z float64) Quaternion {
	return Quaternion{Quat: mgl64.AnglesToQuat(DegToRad(x), DegToRad(y), DegToRad(z), mgl64.XYZ)}
}

// NewQuaternionRotate は始点ベクトルを終点ベクトルへ写す最短弧回転を生成する。
func NewQuaternionRotate(from Vec3, to Vec3) Quaternion {
	return Quaternion{Quat: mgl64.QuatBetweenVectors(toMgl(from), toMgl(to))}
}

// MulVec3 はベクトルを回転する。
func (q Quaternion) MulVec3(v Vec3) Vec3 {
	return fromMgl(q.Quat.Rotate(toMgl(v)))
}

// Mul は回転の合成を返す。
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{Quat: q.Quat.Mul(other.Quat)}
}

// Angle は回転角(ラジアン)を返す。
func (q Quaternion) Angle() float64 {
	w := q.Quat.Normalize().W
	if w > 1 {
		w = 1
	} else if w < -1 {
		w = -1
	}
	return 2.0 * math.Acos(math.Abs(w))
}

// IsIdent は許容誤差内で無回転かを判定する。
func (q Quaternion) IsIdent(epsilon float64) bool {
	return q.Angle() <= epsilon
}

// toMgl はVec3をmgl64型へ変換する。
func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// fromMgl はmgl64型をVec3へ変換する。
func fromMgl(v mgl64.Vec3) Vec3 {
	return NewVec3(v[0], v[1], v[2])
}
