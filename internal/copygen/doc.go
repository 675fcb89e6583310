// Package copygen writes advertising copy for banner text.
//
// Each supported Platform (naver, meta, google, kakao) carries title and
// description limits counted in characters. A Generator requests one copy per
// Variation (safe, optimized, bold) for every requested platform, varying the
// sampling temperature per variation, and records whether each copy fits the
// platform's limits. Failed requests produce placeholder copies rather than
// aborting the run.
package copygen
