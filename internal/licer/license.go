// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package licer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"licer/internal/config"
)

// licenseFiles are the names under which an existing license is recognised.
var licenseFiles = []string{"LICENSE", "LICENSE.md", "LICENSE.txt", "LICENCE", "COPYING"}

const mitText = `MIT License

Copyright (c) %d %s

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

const apacheText = `Copyright %d %s

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
`

// LicenseText returns the LICENSE file contents matching the license that c
// puts into headers.
func LicenseText(c *config.Config, year int) string {
	t := c.Template()
	if t.LicenseType == "Apache-2.0" {
		return fmt.Sprintf(apacheText, year, t.CopyrightOwner)
	}
	return fmt.Sprintf(mitText, year, t.CopyrightOwner)
}

// EnsureLicense writes a LICENSE file into root unless one exists already.
// It reports whether a file was written.
func EnsureLicense(root string, c *config.Config, year int) (bool, error) {
	for _, name := range licenseFiles {
		_, err := os.Stat(filepath.Join(root, name))
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}
	path := filepath.Join(root, "LICENSE")
	if err := os.WriteFile(path, []byte(LicenseText(c, year)), 0o644); err != nil {
		return false, fmt.Errorf("failed to write LICENSE: %w", err)
	}
	return true, nil
}
