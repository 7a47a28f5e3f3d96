// 指示: miu200521358
package model

import "github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"

// カプセルメッシュの固定トポロジ定数。接続情報はパラメータに依らず一定で、
// 姿勢はトランスフォームノードを持たず指定頂点から復元する。
const (
	// CapsuleVertexCount はカプセル頂点数を表す。
	CapsuleVertexCount = 38
	// CapsuleTriangleCount はカプセル三角形数を表す。
	CapsuleTriangleCount = 72

	// CapsuleEndID は+X側先端頂点のIDを表す。
	CapsuleEndID = 0
	// CapsuleStartID は原点側先端頂点のIDを表す。
	CapsuleStartID = 37
	// CapsuleZUpID は上方向基準頂点のIDを表す。
	CapsuleZUpID = 19
	// CapsuleZDownID は下方向基準頂点のIDを表す。
	CapsuleZDownID = 22
)

// capsuleTriangles はカプセルの三角形接続表を保持する。
var capsuleTriangles = []Triangle{
	{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}, {0, 5, 6}, {0, 6, 1},
	{1, 7, 8}, {2, 1, 8}, {2, 8, 9}, {3, 2, 9}, {3, 9, 10}, {4, 3, 10},
	{4, 10, 11}, {5, 4, 11}, {5, 11, 12}, {6, 5, 12}, {6, 12, 7}, {1, 6, 7},
	{7, 13, 14}, {8, 7, 14}, {8, 14, 15}, {9, 8, 15}, {9, 15, 16}, {10, 9, 16},
	{10, 16, 17}, {11, 10, 17}, {11, 17, 18}, {12, 11, 18}, {12, 18, 13}, {7, 12, 13},
	{13, 19, 20}, {14, 13, 20}, {14, 20, 21}, {15, 14, 21}, {15, 21, 22}, {16, 15, 22},
	{16, 22, 23}, {17, 16, 23}, {17, 23, 24}, {18, 17, 24}, {18, 24, 19}, {13, 18, 19},
	{19, 25, 26}, {20, 19, 26}, {20, 26, 27}, {21, 20, 27}, {21, 27, 28}, {22, 21, 28},
	{22, 28, 29}, {23, 22, 29}, {23, 29, 30}, {24, 23, 30}, {24, 30, 25}, {19, 24, 25},
	{25, 31, 32}, {26, 25, 32}, {26, 32, 33}, {27, 26, 33}, {27, 33, 34}, {28, 27, 34},
	{28, 34, 35}, {29, 28, 35}, {29, 35, 36}, {30, 29, 36}, {30, 36, 31}, {25, 30, 31},
	{32, 31, 37}, {33, 32, 37}, {34, 33, 37}, {35, 34, 37}, {36, 35, 37}, {31, 36, 37},
}

// CapsuleTriangles はカプセルの三角形接続表の複製を返す。
func CapsuleTriangles() []Triangle {
	triangles := make([]Triangle, len(capsuleTriangles))
	copy(triangles, capsuleTriangles)
	return triangles
}

// CapsuleFaces はカプセル接続表を面ごとの頂点IDリストで返す。
func CapsuleFaces() [][]int {
	triangles := CapsuleTriangles()
	faces := make([][]int, len(triangles))
	for i, triangle := range triangles {
		faces[i] = []int{triangle[0], triangle[1], triangle[2]}
	}
	return faces
}

// CapsulePoints は高さと半径からローカル空間のカプセル頂点位置38点を返す。
// カプセルはローカル+X軸に沿って置かれ、両端の極頂点と中心頂点を含む。
func CapsulePoints(height float64, radius float64) []mmath.Vec3 {
	return []mmath.Vec3{
		mmath.NewVec3(radius+height+radius, 0.0, 0.0),
		mmath.NewVec3(radius+height+(0.868*radius), 0.0*radius, 0.5*radius),
		mmath.NewVec3(radius+height+(0.868*radius), -0.433*radius, 0.25*radius),
		mmath.NewVec3(radius+height+(0.868*radius), -0.433*radius, -0.25*radius),
		mmath.NewVec3(radius+height+(0.868*radius), 0.0*radius, -0.5*radius),
		mmath.NewVec3(radius+height+(0.868*radius), 0.433*radius, -0.25*radius),
		mmath.NewVec3(radius+height+(0.868*radius), 0.433*radius, 0.25*radius),
		mmath.NewVec3(radius+height+(0.5*radius), 0.0*radius, 0.866*radius),
		mmath.NewVec3(radius+height+(0.5*radius), -0.75*radius, 0.433*radius),
		mmath.NewVec3(radius+height+(0.5*radius), -0.75*radius, -0.433*radius),
		mmath.NewVec3(radius+height+(0.5*radius), 0.0*radius, -0.866*radius),
		mmath.NewVec3(radius+height+(0.5*radius), 0.75*radius, -0.433*radius),
		mmath.NewVec3(radius+height+(0.5*radius), 0.75*radius, 0.433*radius),
		mmath.NewVec3(radius+height, 0.0*radius, 1.0*radius),
		mmath.NewVec3(radius+height, -0.866*radius, 0.5*radius),
		mmath.NewVec3(radius+height, -0.866*radius, -0.5*radius),
		mmath.NewVec3(radius+height, 0.0*radius, -1.0*radius),
		mmath.NewVec3(radius+height, 0.866*radius, -0.5*radius),
		mmath.NewVec3(radius+height, 0.866*radius, 0.5*radius),
		mmath.NewVec3(1.0*radius, 0.0*radius, 1.0*radius),
		mmath.NewVec3(1.0*radius, -0.866*radius, 0.5*radius),
		mmath.NewVec3(1.0*radius, -0.866*radius, -0.5*radius),
		mmath.NewVec3(1.0*radius, 0.0*radius, -1.0*radius),
		mmath.NewVec3(1.0*radius, 0.866*radius, -0.5*radius),
		mmath.NewVec3(1.0*radius, 0.866*radius, 0.5*radius),
		mmath.NewVec3(0.5*radius, 0.0*radius, 0.866*radius),
		mmath.NewVec3(0.5*radius, -0.75*radius, 0.433*radius),
		mmath.NewVec3(0.5*radius, -0.75*radius, -0.433*radius),
		mmath.NewVec3(0.5*radius, 0.0*radius, -0.866*radius),
		mmath.NewVec3(0.5*radius, 0.75*radius, -0.433*radius),
		mmath.NewVec3(0.5*radius, 0.75*radius, 0.433*radius),
		mmath.NewVec3(0.132*radius, 0.0*radius, 0.5*radius),
		mmath.NewVec3(0.132*radius, -0.433*radius, 0.25*radius),
		mmath.NewVec3(0.132*radius, -0.433*radius, -0.25*radius),
		mmath.NewVec3(0.132*radius, 0.0*radius, -0.5*radius),
		mmath.NewVec3(0.132*radius, 0.433*radius, -0.25*radius),
		mmath.NewVec3(0.132*radius, 0.433*radius, 0.25*radius),
		mmath.NewVec3(0.0, 0.0, 0.0),
	}
}

// CapsuleFrame はカプセル頂点から導出する正規直交基底を表す。
// 生成時に一度計算し、頂点編集後に再計算する。
type CapsuleFrame struct {
	Origin mmath.Vec3
	AxisX  mmath.Vec3
	AxisY  mmath.Vec3
	AxisZ  mmath.Vec3
}

// NewCapsuleFrame は指定頂点位置からカプセル基底を導出する。
func NewCapsuleFrame(points []mmath.Vec3) CapsuleFrame {
	axisX := points[CapsuleEndID].Sub(points[CapsuleStartID]).Normalized()
	up := points[CapsuleZUpID].Sub(points[CapsuleStartID]).Normalized()
	axisY := axisX.Cross(up).Normalized()
	if axisY.NearEquals(mmath.ZERO_VEC3, 1e-10) {
		// 上方向基準が長軸と平行な場合は基底が潰れるため、ワールド軸で補う。
		axisY = axisX.Cross(mmath.UNIT_Z_VEC3).Normalized()
		if axisY.NearEquals(mmath.ZERO_VEC3, 1e-10) {
			axisY = mmath.UNIT_Y_VEC3
		}
	}
	axisZ := axisX.Cross(axisY).Normalized()
	return CapsuleFrame{
		Origin: points[CapsuleStartID],
		AxisX:  axisX,
		AxisY:  axisY,
		AxisZ:  axisZ,
	}
}

// Matrix はカプセル空間からワールド空間への変換行列を返す。
func (f CapsuleFrame) Matrix() mmath.Mat4 {
	return mmath.NewMat4FromAxes(f.AxisX, f.AxisY, f.AxisZ, f.Origin)
}

// CapsuleHeightFromPoints は頂点位置からカプセル高さを導出する。
func CapsuleHeightFromPoints(points []mmath.Vec3) float64 {
	return points[CapsuleEndID].Distance(points[CapsuleStartID]) - (CapsuleRadiusFromPoints(points) * 2.0)
}

// CapsuleRadiusFromPoints は頂点位置からカプセル半径を導出する。
func CapsuleRadiusFromPoints(points []mmath.Vec3) float64 {
	return points[CapsuleZUpID].Distance(points[CapsuleZDownID]) / 2.0
}
