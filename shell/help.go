package shell

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

func usage(w io.Writer, execPath string) {
	dat, err := os.ReadFile(filepath.Join(execPath, "./shell/helptext/usage.txt"))
	if err != nil {
		io.WriteString(w, "Error loading helptext: "+err.Error())
		return
	}
	io.WriteString(w, string(dat))
}

func usageTopic(w io.Writer, topic string, execPath string) {
	dat, err := os.ReadFile(filepath.Join(execPath, "./shell/helptext/"+filepath.Base(topic)+".txt"))
	if err != nil {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	io.WriteString(w, string(dat))
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb, sc.execPath)
	} else {
		usageTopic(&sb, cmd.args[0], sc.execPath)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
