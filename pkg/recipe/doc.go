// Package recipe reads recipe.kdl files.
//
// A recipe is a small KDL document:
//
//	tap "homebrew/cask-fonts"
//
//	brew "git" {
//	    cp "gitconfig" "~/.config/git"
//	    dl "https://example.com/completion.fish" "~/.config/fish/completions/git.fish"
//	    echo "source ~/.config/git/aliases" "~/.config/fish/config.fish"
//	    fish "git config --global init.defaultBranch main"
//	}
//
//	cask "font-fira-code"
//
// Only the syntax a recipe needs is supported. Properties and type
// annotations parse but are rejected when decoding.
package recipe
