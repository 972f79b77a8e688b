// Package git clones the repository git-- sets up.
//
// Clone runs the equivalent of `git clone <url>` inside a working
// directory, using either the git binary (BackendExec) or go-git in-process
// (BackendGoGit). Both backends report through the same CloneResult, so the
// caller can tell a rejected repository reference (exit code 128) from any
// other failure:
//
//	res := git.Clone(git.CloneOptions{
//	    URL:    "https://github.com/example/repo",
//	    Logger: logger,
//	})
//	if !res.OK() {
//	    if res.InvalidRepository() {
//	        fmt.Printf("%s not valid repository\n", res.URL)
//	    }
//	    return res.Err
//	}
//
// Clone never retries and applies no timeout; the Context only lets an
// interrupt stop the child process. After git reports success the
// destination is opened with go-git (Locate) to confirm it is a worktree.
//
// The package is not safe for concurrent use: tests swap the command
// runner through package variables.
package git
