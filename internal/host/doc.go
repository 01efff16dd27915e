// Package host 是视图模式解析器的内存宿主：根据配置构建数据源、视图、过滤器与访问者，
// 并按请求参数选出当前过滤器，实现 viewpattern.View 等接口。
//
// 它只负责驱动解析器，不做持久化：用户偏好过滤器（filter=-1/-2）直接取自本次
// 请求提交的 usersearch/userperpage。
package host
