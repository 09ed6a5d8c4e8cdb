// Package registry reads the project registry, the projects.conf file that names
// the current project and where each project keeps its configuration.
//
// The file uses the ConfigObj layout:
//
//	project = example
//	[projects]
//	  [[example]]
//	    conf_path = /home/user/example/conf
//	    data_path = /home/user/example/data
//
// Locate picks a registry in <working dir>/.gmprocess when that directory and its
// projects.conf exist, and the global one in <home>/.gmprocess otherwise.
package registry
