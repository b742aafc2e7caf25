// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licer adds copyright and license headers to the source files of a git
repository.

It recursively walks the repository and prepends a header, written in the
comment syntax of each file type, to every source file that does not have one
yet. Files that already carry an SPDX-License-Identifier are left alone, and so
are files starting with someone else's copyright notice, unless -force is
given. Documents, data, media and binaries are never touched. A LICENSE file
matching the header is created when the repository has none.

On first run you are asked for your name, role, department and organization,
and the answers are saved to ~/.config/licer.yml. Students get MIT headers
naming themselves; faculty and staff get Apache-2.0 headers naming the
organization.

With -remove, headers are removed again, but only when they carry an SPDX
identifier and name you or your organization.

With -hook, licer installs itself as the repository's git pre-commit hook
(or, together with -remove, uninstalls it). The hook runs licer -pre-commit,
which licenses only the files newly added in the commit and stages them
again.

Examples:

	licer                               # process the current repository
	licer -git-folder /path/to/repo     # process another repository
	licer -force                        # replace existing headers
	licer -remove                       # remove your own headers
	licer -hook                         # install the pre-commit hook
	licer -hook -remove                 # uninstall the pre-commit hook
	licer -verbose=false                # quiet mode
*/
package main

import (
	_ "embed"

	"licer/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
