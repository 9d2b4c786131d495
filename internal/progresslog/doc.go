// Copyright (c) 2020 The Decred developers
// Copyright (c) 2026 The mwd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package progresslog provides periodic logging for header processing.

Tests are included to ensure proper functionality.

## Feature Overview

- Maintains cumulative totals about headers between each logging interval
  - Total number of headers
  - Total chain work of the headers
- Logs all cumulative data every 10 seconds
- Immediately logs any outstanding data when forced
*/
package progresslog
