// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header generates license header text and renders it in the comment
// syntax of a file type.
package header

import (
	"fmt"

	"licer/internal/config"
)

// Generate returns the uncommented header text for c and year.
func Generate(c *config.Config, year int) string {
	switch c.DefaultRole {
	case config.Faculty, config.Staff:
		return fmt.Sprintf(`Copyright %d %s

Licensed under the Apache License, Version 2.0.
See the LICENSE file for details.
SPDX-License-Identifier: Apache-2.0

Developed by: %s
              %s`, year, c.Organization, c.FullName, c.DeptOrLab)
	default:
		return fmt.Sprintf(`Copyright (c) %d %s

SPDX-License-Identifier: MIT
See LICENSE file for full license text.`, year, c.FullName)
	}
}
