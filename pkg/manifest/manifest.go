// Package manifest classifies installed mods and synthesizes the profile
// document the external mod loader consumes. The document is always
// rewritten whole, never patched, so re-synthesis with an unchanged mod
// set produces byte-identical output.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modkeep/pkg/errors"
)

// Known asset subdirectory names used to recognize an asset-override
// package.
var assetSubdirs = map[string]bool{
	"chr": true, "parts": true, "param": true, "sfx": true,
	"map": true, "obj": true, "menu": true, "msg": true,
	"shader": true, "sound": true, "event": true, "script": true,
	"action": true,
}

const (
	assetContainerName = "regulation.bin"
	assetFileExt       = ".dcx"
	nativeLibExt       = ".dll"
)

// Mod is the minimal input the synthesizer needs per enabled mod.
type Mod struct {
	Name string
	Path string
}

// Profile is the classified content of one game's manifest.
type Profile struct {
	LoaderGame string
	Packages   []string
	Natives    []string
}

// Classify splits the enabled mods into asset packages and native
// libraries. Mods that contribute neither are returned by name so the
// caller can warn; the synthesizer itself stays quiet about them.
func Classify(loaderGame string, mods []Mod) (Profile, []string) {
	p := Profile{LoaderGame: loaderGame}
	var silent []string

	for _, mod := range mods {
		info, err := os.Stat(mod.Path)
		if err != nil {
			silent = append(silent, mod.Name)
			continue
		}

		if !info.IsDir() {
			if strings.EqualFold(filepath.Ext(mod.Path), nativeLibExt) {
				p.Natives = append(p.Natives, mod.Path)
			} else {
				silent = append(silent, mod.Name)
			}
			continue
		}

		natives := FindNativeLibraries(mod.Path)
		p.Natives = append(p.Natives, natives...)
		isPackage := HasAssetContent(mod.Path)
		if isPackage {
			p.Packages = append(p.Packages, mod.Path)
		}
		if len(natives) == 0 && !isPackage {
			silent = append(silent, mod.Name)
		}
	}
	return p, silent
}

// FindNativeLibraries returns native-library files in dir, looking one
// nesting level deep. Unreadable directories yield nothing.
func FindNativeLibraries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var found []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !entry.IsDir() {
			if strings.EqualFold(filepath.Ext(entry.Name()), nativeLibExt) {
				found = append(found, path)
			}
			continue
		}
		subEntries, err := os.ReadDir(path)
		if err != nil {
			continue
		}
		for _, sub := range subEntries {
			if !sub.IsDir() && strings.EqualFold(filepath.Ext(sub.Name()), nativeLibExt) {
				found = append(found, filepath.Join(path, sub.Name()))
			}
		}
	}
	return found
}

// HasAssetContent reports whether dir holds asset-override content: a
// known asset subdirectory, a packed-asset container, or a packed-asset
// file.
func HasAssetContent(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if entry.IsDir() && assetSubdirs[name] {
			return true
		}
		if !entry.IsDir() && (name == assetContainerName || strings.HasSuffix(name, assetFileExt)) {
			return true
		}
	}
	return false
}

// Render produces the loader profile document. Paths use single-quoted
// literal strings so backslashes need no escaping; the supports block
// naming the loader's game id comes last.
func Render(p Profile) string {
	var b strings.Builder
	b.WriteString("profileVersion = \"v1\"\n")

	if len(p.Packages) == 0 {
		b.WriteString("packages = []\n")
	}
	for _, pkg := range p.Packages {
		fmt.Fprintf(&b, "\n[[packages]]\npath = '%s'\n", pkg)
	}

	for _, native := range p.Natives {
		fmt.Fprintf(&b, "\n[[natives]]\n"+
			"path = '%s'\n"+
			"optional = false\n"+
			"enabled = true\n"+
			"load_before = []\n"+
			"load_after = []\n"+
			"load_early = false\n", native)
	}

	fmt.Fprintf(&b, "\n[[supports]]\ngame = \"%s\"\n", p.LoaderGame)
	return b.String()
}

// Write renders the profile and replaces the document at path.
func Write(path string, p Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to create profiles directory")
	}
	if err := os.WriteFile(path, []byte(Render(p)), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write manifest: %s", path)
	}
	return nil
}
