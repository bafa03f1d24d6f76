package driver

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteResults записывает изменённые файлы на место и возвращает их число.
// Виртуальные файлы и файлы с ошибками не трогаются; BOM и CRLF восстанавливаются.
func WriteResults(res *Result, sink ProgressSink) (int, error) {
	if res == nil {
		return 0, nil
	}
	written := 0
	for _, fr := range res.Files {
		if !fr.Changed || fr.Bag.HasErrors() {
			continue
		}
		if int(fr.FileID) >= res.FileSet.Len() {
			continue
		}
		sf := res.FileSet.Get(fr.FileID)
		if sf.IsVirtual() {
			continue
		}
		emit(sink, Event{File: fr.Path, Stage: StageWrite, Status: StatusWorking})
		if err := writeAtomic(fr.Path, sf.Restore(fr.Output)); err != nil {
			emit(sink, Event{File: fr.Path, Stage: StageWrite, Status: StatusError, Err: err})
			return written, fmt.Errorf("write %s: %w", fr.Path, err)
		}
		emit(sink, Event{File: fr.Path, Stage: StageWrite, Status: StatusDone})
		written++
	}
	return written, nil
}

// writeAtomic пишет во временный файл рядом и переименовывает, сохраняя права.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
