// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_skin2nif/pkg/adapter/io_config"
	"github.com/miu200521358/mu_skin2nif/pkg/adapter/io_model/gltfscene"
	"github.com/miu200521358/mu_skin2nif/pkg/adapter/io_model/nifskin"
	"github.com/miu200521358/mu_skin2nif/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/infra/base/mlogging"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/logging"
	"github.com/miu200521358/mu_skin2nif/pkg/usecase/minteractor"
)

// options はCLI引数を保持する。
type options struct {
	scenePath  string
	skinPath   string
	outputPath string
	meshName   string
	configPath string
	verbose    bool
}

// cliProgressReporter は進捗イベントを標準出力へ流す。
type cliProgressReporter struct {
	out io.Writer
}

// ReportExportProgress は進捗イベントを出力する。
func (r *cliProgressReporter) ReportExportProgress(event minteractor.ExportProgressEvent) {
	fmt.Fprintf(r.out, "[mu_skin2nif] (%d/%d) %s\n", event.Step, event.Total, event.Message)
}

// main はシーンのスキンウェイトをスキン構造へ転送する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	logger := mlogging.NewLogger(errOut)
	if opts.verbose {
		logger.SetLevel(logging.LOG_LEVEL_DEBUG)
	}
	logging.SetDefaultLogger(logger)

	config := io_config.DefaultPhysicsConfig()
	if opts.configPath != "" {
		config, err = io_config.LoadPhysicsConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	usecase := minteractor.NewSkin2NifUsecase(minteractor.Skin2NifUsecaseDeps{
		SceneReader: gltfscene.NewGltfRepository(),
		SkinReader:  nifskin.NewNifSkinRepository(),
		SkinWriter:  nifskin.NewNifSkinRepository(),
		SizingRules: config.SizingRules(),
	})

	outputPath, err := resolveOutputPath(opts.skinPath, opts.outputPath)
	if err != nil {
		return err
	}
	if err := ensureOutputDir(outputPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "[mu_skin2nif] %s: %s\n", messages.ExportStart, opts.scenePath)
	result, err := usecase.ExportSkin(minteractor.ExportSkinRequest{
		ScenePath:  opts.scenePath,
		SkinPath:   opts.skinPath,
		OutputPath: outputPath,
		MeshName:   opts.meshName,
		Progress:   &cliProgressReporter{out: out},
	})
	if err != nil {
		return fmt.Errorf("エクスポートに失敗しました: %w", err)
	}

	for _, warning := range result.Remap.Warnings {
		fmt.Fprintf(out, "[mu_skin2nif] 警告: %s\n", warningText(warning))
	}
	fmt.Fprintf(out, "[mu_skin2nif] 変換完了: %s\n", outputPath)
	return nil
}

// warningText は警告IDを表示メッセージへ引き直す。未知IDはそのまま返す。
func warningText(warningID string) string {
	switch warningID {
	case model.SkinWarningMissingInfluenceBone:
		return messages.WarnMissingInfluenceBone
	case model.SkinWarningWeightsTruncated:
		return messages.WarnWeightsTruncated
	}
	return warningID
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_skin2nif", flag.ContinueOnError)
	fs.SetOutput(errOut)

	scene := fs.String("scene", "", "入力シーンファイルパス(.glb/.gltf)")
	skin := fs.String("skin", "", "変換先スキン構造ファイルパス(.musk)")
	out := fs.String("out", "", "出力スキン構造ファイルパス")
	mesh := fs.String("mesh", "", "転送元メッシュノード名(省略時は自動探索)")
	config := fs.String("config", "", "物理生成設定ファイルパス(YAML)")
	verbose := fs.Bool("verbose", false, "詳細ログを出力する")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *scene == "" && fs.NArg() > 0 {
		*scene = fs.Arg(0)
	}
	if *skin == "" && fs.NArg() > 1 {
		*skin = fs.Arg(1)
	}
	if *scene == "" {
		return options{}, fmt.Errorf("入力シーンファイルを指定してください (-scene)")
	}
	if *skin == "" {
		return options{}, fmt.Errorf("変換先スキン構造ファイルを指定してください (-skin)")
	}

	return options{
		scenePath:  *scene,
		skinPath:   *skin,
		outputPath: *out,
		meshName:   *mesh,
		configPath: *config,
		verbose:    *verbose,
	}, nil
}

// resolveOutputPath は出力パスを解決する。省略時はスキンパスの隣へ _out を付けて書く。
func resolveOutputPath(skinPath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		dir := filepath.Dir(skinPath)
		base := strings.TrimSuffix(filepath.Base(skinPath), filepath.Ext(skinPath))
		return filepath.Join(dir, base+"_out"+filepath.Ext(skinPath)), nil
	}
	return outputPath, nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリを作成できません: %w", err)
	}
	return nil
}
