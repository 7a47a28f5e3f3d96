// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// runInTransaction は対象の深いコピーを取ってから処理を実行し、失敗時は
// 取得済みスナップショットで巻き戻してからエラーを返す。途中まで適用された
// スキンやスケルトンは復旧不能なシーン状態になるため、変更系操作は必ず
// この境界の内側で行う。同一対象への並行呼び出しは前提条件として禁止する。
func runInTransaction[T any](target *T, fn func() error) error {
	if target == nil {
		return fmt.Errorf("トランザクション対象が未設定です")
	}
	var snapshot T
	if err := deepcopy.Copy(&snapshot, *target); err != nil {
		return fmt.Errorf("スナップショット取得に失敗しました: %w", err)
	}
	if err := fn(); err != nil {
		if restoreErr := deepcopy.Copy(target, snapshot); restoreErr != nil {
			return fmt.Errorf("巻き戻しに失敗しました: %v (原因: %w)", restoreErr, err)
		}
		return err
	}
	return nil
}
