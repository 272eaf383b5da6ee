// Package watch provides filesystem watching for continuous scanning.
//
// A Watcher monitors Solidity source trees through fsnotify and reports
// changed files to a handler once they settle. Raw filesystem events are
// too noisy to scan on directly: editors write a file several times per
// save, and build tools touch dozens of files at once. The watcher
// debounces per path and coalesces everything that settled in the same
// window into one handler call, so a bulk change triggers one re-scan
// instead of fifty.
//
// Directory targets are watched recursively, vendored trees
// (node_modules, lib, .git) are skipped, and directories created while
// watching are added on the fly.
//
// # Usage
//
//	w, err := watch.NewWatcher([]string{"contracts"}, func(ctx context.Context, paths []string) {
//	    // re-scan the project covering paths
//	})
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(ctx); err != nil {
//	    return err
//	}
//	defer w.Stop()
package watch
